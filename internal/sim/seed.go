package sim

import (
	"fmt"
	"slices"
)

// SeedFile is an authored file entry.
type SeedFile struct {
	Name    string     `json:"name" yaml:"name" validate:"required"`
	Status  FileStatus `json:"status" yaml:"status" validate:"required"`
	Content string     `json:"content,omitempty" yaml:"content,omitempty"`
}

// SeedCommit is an authored commit. An empty Branch means the seed's current branch.
type SeedCommit struct {
	Message string   `json:"message" yaml:"message" validate:"required"`
	Files   []string `json:"files" yaml:"files"`
	Branch  string   `json:"branch,omitempty" yaml:"branch,omitempty"`
}

// Seed is the initial configuration a scenario supplies.
type Seed struct {
	Files         []SeedFile   `json:"files" yaml:"files" validate:"dive"`
	Commits       []SeedCommit `json:"commits" yaml:"commits" validate:"dive"`
	Branches      []string     `json:"branches" yaml:"branches"`
	CurrentBranch string       `json:"currentBranch" yaml:"current_branch"`
	IsInitialized bool         `json:"isInitialized" yaml:"is_initialized"`
}

// Hydrate builds a full Repository from seed, generating one hash per seed
// commit in order and wiring each branch head to its last commit.
func Hydrate(seed Seed, hash HashFunc) Repository {
	if hash == nil {
		hash = RandomHash
	}

	repo := Repository{IsInitialized: seed.IsInitialized}

	for i, f := range seed.Files {
		repo.Files = append(repo.Files, File{
			ID:      fmt.Sprintf("f%d", i+1),
			Name:    f.Name,
			Status:  f.Status,
			Content: f.Content,
		})
	}

	if !seed.IsInitialized {
		return repo
	}

	current := seed.CurrentBranch
	if current == "" {
		current = DefaultBranch
		if len(seed.Branches) > 0 {
			current = seed.Branches[0]
		}
	}

	names := append([]string(nil), seed.Branches...)
	if !slices.Contains(names, current) {
		names = append(names, current)
	}
	for _, c := range seed.Commits {
		if c.Branch != "" && !slices.Contains(names, c.Branch) {
			names = append(names, c.Branch)
		}
	}
	for i, name := range names {
		repo.Branches = append(repo.Branches, Branch{Name: name, Color: ColorFor(i)})
	}
	repo.CurrentBranch = current

	trunk := names[0]
	for i, sc := range seed.Commits {
		branch := sc.Branch
		if branch == "" {
			branch = current
		}
		parent := headOf(repo, branch)
		if parent == "" {
			parent = headOf(repo, trunk)
		}
		c := Commit{
			ID:      commitID(i),
			Hash:    uniqueHash(repo, hash),
			Message: sc.Message,
			Files:   append([]string(nil), sc.Files...),
			Branch:  branch,
		}
		if parent != "" {
			c.Parents = []string{parent}
		}
		repo.Commits = append(repo.Commits, c)
		repo.Branches[repo.branchIndex(branch)].Head = c.Hash
	}

	return repo
}

func headOf(repo Repository, branch string) string {
	b, _ := repo.Branch(branch)
	return b.Head
}

func commitID(n int) string {
	return fmt.Sprintf("c%d", n+1)
}
