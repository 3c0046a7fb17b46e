package sim

import (
	"strings"
	"unicode"
)

// Kind identifies a recognized command family.
type Kind string

// Command families.
const (
	KindEmpty          Kind = "empty"
	KindInit           Kind = "init"
	KindStatus         Kind = "status"
	KindLog            Kind = "log"
	KindDiff           Kind = "diff"
	KindAdd            Kind = "add"
	KindCommit         Kind = "commit"
	KindBranchList     Kind = "branch-list"
	KindBranchCreate   Kind = "branch-create"
	KindBranchDelete   Kind = "branch-delete"
	KindCheckoutCreate Kind = "checkout-create"
	KindCheckout       Kind = "checkout"
	KindMerge          Kind = "merge"
	KindRestoreStaged  Kind = "restore-staged"
	KindRestore        Kind = "restore"
	KindUnrecognized   Kind = "unrecognized"
)

// Command is a parsed line. Only the fields relevant to Kind are set.
type Command struct {
	Kind Kind
	Raw  string

	// Target is a file or branch name. All is set instead for "." style targets.
	Target string
	All    bool

	Message    string
	HasMessage bool
	StageAll   bool // commit -a

	Oneline bool
	Staged  bool
	Abort   bool
	Force   bool // branch -D
	Switch  bool // issued as `git switch` rather than `git checkout`

	// Token is the raw first word of an unrecognized line.
	Token string
}

type token struct {
	text   string
	lower  string
	quoted bool
}

type tokens []token

func (t tokens) is(words ...string) bool {
	if len(t) != len(words) {
		return false
	}
	return t.hasPrefix(words...)
}

func (t tokens) hasPrefix(words ...string) bool {
	if len(t) < len(words) {
		return false
	}
	for i, w := range words {
		if t[i].lower != w {
			return false
		}
	}
	return true
}

func isAllTarget(tok token) bool {
	switch tok.lower {
	case ".", "-a", "--all":
		return true
	}
	return false
}

func isFlag(tok token) bool {
	return !tok.quoted && strings.HasPrefix(tok.text, "-")
}

// rule pairs a predicate with the builder for its command family. Rules are
// evaluated in order, most specific first.
type rule struct {
	kind  Kind
	match func(tokens) bool
	build func(tokens) Command
}

var rules = []rule{
	{
		kind:  KindInit,
		match: func(t tokens) bool { return t.is("git", "init") },
	},
	{
		kind:  KindStatus,
		match: func(t tokens) bool { return t.is("git", "status") },
	},
	{
		kind: KindLog,
		match: func(t tokens) bool {
			return t.is("git", "log") || t.is("git", "log", "--oneline")
		},
		build: func(t tokens) Command { return Command{Oneline: len(t) == 3} },
	},
	{
		kind: KindDiff,
		match: func(t tokens) bool {
			return t.is("git", "diff") || t.is("git", "diff", "--staged") || t.is("git", "diff", "--cached")
		},
		build: func(t tokens) Command { return Command{Staged: len(t) == 3} },
	},
	{
		kind:  KindAdd,
		match: func(t tokens) bool { return len(t) == 3 && t.hasPrefix("git", "add") },
		build: func(t tokens) Command {
			if isAllTarget(t[2]) {
				return Command{All: true}
			}
			return Command{Target: t[2].text}
		},
	},
	{
		kind:  KindCommit,
		match: func(t tokens) bool { return t.hasPrefix("git", "commit") },
		build: buildCommit,
	},
	{
		kind: KindBranchDelete,
		match: func(t tokens) bool {
			return len(t) == 4 && t.hasPrefix("git", "branch", "-d")
		},
		build: func(t tokens) Command {
			return Command{Target: t[3].text, Force: t[2].text == "-D"}
		},
	},
	{
		kind:  KindBranchList,
		match: func(t tokens) bool { return t.is("git", "branch") },
	},
	{
		kind: KindBranchCreate,
		match: func(t tokens) bool {
			return len(t) == 3 && t.hasPrefix("git", "branch") && !isFlag(t[2])
		},
		build: func(t tokens) Command { return Command{Target: t[2].text} },
	},
	{
		kind: KindCheckoutCreate,
		match: func(t tokens) bool {
			return len(t) == 4 && (t.hasPrefix("git", "checkout", "-b") || t.hasPrefix("git", "switch", "-c"))
		},
		build: func(t tokens) Command {
			return Command{Target: t[3].text, Switch: t[1].lower == "switch"}
		},
	},
	{
		kind: KindCheckout,
		match: func(t tokens) bool {
			return len(t) == 3 && (t.hasPrefix("git", "checkout") || t.hasPrefix("git", "switch")) && !isFlag(t[2])
		},
		build: func(t tokens) Command {
			return Command{Target: t[2].text, Switch: t[1].lower == "switch"}
		},
	},
	{
		kind:  KindMerge,
		match: func(t tokens) bool { return t.is("git", "merge", "--abort") },
		build: func(tokens) Command { return Command{Abort: true} },
	},
	{
		kind: KindMerge,
		match: func(t tokens) bool {
			return len(t) == 3 && t.hasPrefix("git", "merge") && !isFlag(t[2])
		},
		build: func(t tokens) Command { return Command{Target: t[2].text} },
	},
	{
		kind: KindRestoreStaged,
		match: func(t tokens) bool {
			return (len(t) == 3 || len(t) == 4) && t.hasPrefix("git", "restore", "--staged")
		},
		build: func(t tokens) Command { return restoreTarget(t, 3) },
	},
	{
		kind: KindRestore,
		match: func(t tokens) bool {
			return (len(t) == 2 || len(t) == 3) && t.hasPrefix("git", "restore") && (len(t) == 2 || !isFlag(t[2]))
		},
		build: func(t tokens) Command { return restoreTarget(t, 2) },
	},
}

func restoreTarget(t tokens, at int) Command {
	if len(t) <= at || t[at].text == "." {
		return Command{All: true}
	}
	return Command{Target: t[at].text}
}

func buildCommit(t tokens) Command {
	cmd := Command{}
	for i := 2; i < len(t); i++ {
		tok := t[i]
		if tok.quoted {
			continue
		}
		switch tok.lower {
		case "-a", "--all":
			cmd.StageAll = true
		case "-m", "-am":
			if tok.lower == "-am" {
				cmd.StageAll = true
			}
			if i+1 < len(t) && t[i+1].quoted {
				cmd.Message = t[i+1].text
				cmd.HasMessage = strings.TrimSpace(cmd.Message) != ""
				i++
			}
		}
	}
	return cmd
}

// Parse interprets one line of operator input. It never fails: anything it
// cannot match comes back as KindUnrecognized.
func Parse(line string) Command {
	raw := strings.TrimSpace(line)
	toks := tokenize(raw)
	if len(toks) == 0 {
		return Command{Kind: KindEmpty, Raw: raw}
	}

	for _, r := range rules {
		if !r.match(toks) {
			continue
		}
		cmd := Command{}
		if r.build != nil {
			cmd = r.build(toks)
		}
		cmd.Kind = r.kind
		cmd.Raw = raw
		return cmd
	}

	return Command{Kind: KindUnrecognized, Raw: raw, Token: toks[0].text}
}

// tokenize splits on whitespace, honouring single and double quotes. A token
// is marked quoted only when its quotes were balanced.
func tokenize(s string) tokens {
	var (
		out     tokens
		cur     strings.Builder
		inTok   bool
		quote   rune
		quoted  bool
		pending bool
	)

	flush := func() {
		if !inTok {
			return
		}
		text := cur.String()
		out = append(out, token{text: text, lower: strings.ToLower(text), quoted: quoted && !pending})
		cur.Reset()
		inTok, quoted, pending = false, false, false
	}

	for _, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				pending = false
				continue
			}
			cur.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			inTok = true
			quoted = true
			pending = true
		case unicode.IsSpace(r):
			flush()
		default:
			inTok = true
			cur.WriteRune(r)
		}
	}
	flush()
	return out
}
