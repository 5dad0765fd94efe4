package ir

import (
	"fmt"
	"strings"
)

// DeleteFlag is the literal marker that tells the kernel to consume one
// side of a boolean operation.
const DeleteFlag = "Delete;"

// BooleanStatement is the textual IR form of a script-mode boolean
// operation:
//
//	NAME[] = OPERATION{ GROUP1 DELETEFLAG } { GROUP2 DELETEFLAG };
//
// Each group is a semicolon-joined list of Kind{id} references sharing
// one kind word, and each delete flag is either empty or the literal
// Delete marker. The spacing is part of the grammar the kernel parses
// and is reproduced exactly by Render.
type BooleanStatement struct {
	Name        string
	Op          string
	Kind        string // Line, Surface or Volume, shared by both groups
	InputIDs    []string
	ToolIDs     []string
	DeleteInput bool
	DeleteTool  bool
}

// Render produces the statement text emitted to the kernel.
func (s BooleanStatement) Render() string {
	inputDelete := ""
	if s.DeleteInput {
		inputDelete = DeleteFlag
	}
	toolDelete := ""
	if s.DeleteTool {
		toolDelete = DeleteFlag
	}
	return fmt.Sprintf("%s[] = %s{ %s %s } { %s %s};",
		s.Name,
		s.Op,
		formatGroup(s.Kind, s.InputIDs),
		inputDelete,
		formatGroup(s.Kind, s.ToolIDs),
		toolDelete,
	)
}

// formatGroup joins entity references as Kind{id};...; with a trailing
// semicolon, or the empty string for an empty side.
func formatGroup(kind string, ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	refs := make([]string, len(ids))
	for i, id := range ids {
		refs[i] = fmt.Sprintf("%s{%s}", kind, id)
	}
	return strings.Join(refs, ";") + ";"
}
