package reqtree

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/n2code/reqtree/internal/output"
)

const treeRootScheme = "tree:" + string(filepath.Separator) + string(filepath.Separator)

func (r *reqtree) displayablePath(absolutePath string) string {
	pleasant := pleasantPath(filepath.Clean(absolutePath), r.root, mustGetwd(), true, false)
	if r.fancyTerminalFeatures && strings.HasPrefix(pleasant, treeRootScheme) {
		pleasant = strings.Replace(pleasant, treeRootScheme, output.TerminalFormatAsDim(treeRootScheme), 1)
	}
	return pleasant
}

const dot string = "."
const dirSeparator = string(filepath.Separator)
const dotDirSeparator = dot + dirSeparator
const doubleDot = dot + dot
const doubleDotDirSeparator = doubleDot + dirSeparator

// isChildOf is false for unrelated paths and for parent itself
func isChildOf(child string, parent string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return !(rel == dot || rel == doubleDot || strings.HasPrefix(rel, doubleDotDirSeparator))
}

// pleasantPath turns an absolute path into something easily understandable from the current context.
// If the working directory is inside the tree a relative path is emitted, with leading "./" to stress relativity (opt-out possible).
// If the current location is outside the tree an anchored path is printed and the tree root is abbreviated.
func pleasantPath(absolute string, root string, wd string, collapseRoot bool, omitDotSlash bool) string {
	if wdAboveRoot := isChildOf(root, wd); wdAboveRoot {
		if !collapseRoot {
			return absolute
		}
		anchored, _ := filepath.Rel(root, absolute) //error impossible because both are rooted
		if anchored == dot {
			anchored = ""
		}
		return treeRootScheme + anchored
	}

	prefix := ""
	relative, _ := filepath.Rel(wd, absolute) //error impossible because both are rooted
	if relative == dot && !omitDotSlash {
		return dotDirSeparator
	}
	if !omitDotSlash && !strings.HasPrefix(relative, doubleDotDirSeparator) && relative != doubleDot {
		prefix = dotDirSeparator
	}
	return prefix + relative
}

func mustGetwd() string {
	wd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return wd
}
