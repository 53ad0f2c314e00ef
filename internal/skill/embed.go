package skill

import (
	"embed"
	"io/fs"
)

//go:embed assets/git-worktree
var assets embed.FS

// Embedded returns the skill bundle compiled into the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(assets, "assets/git-worktree")
	if err != nil {
		panic("skill: embedded bundle missing: " + err.Error())
	}
	return sub
}
