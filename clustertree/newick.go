package clustertree

import (
	"fmt"
	"strconv"
	"strings"
)

// Newick serializes the tree rooted at the last-appended cluster to a
// single Newick-format line terminated by ";" (spec §4.6). precision is
// the number of fractional digits used for branch lengths; it must be
// at least 1. A branch length that is zero or negative is emitted as
// the literal "0" rather than a zero-padded decimal, matching the
// source writer's convention for unset/collapsed branches.
//
// Complexity: O(number of clusters).
func (t *Tree) Newick(precision int) (string, error) {
	if precision < 1 {
		return "", fmt.Errorf("clustertree.Newick(precision=%d): %w", precision, ErrInvalidPrecision)
	}
	root, err := t.Root()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if err := t.writeNode(&sb, root, precision); err != nil {
		return "", err
	}
	sb.WriteByte(';')

	return sb.String(), nil
}

// NewickSubtree renders the same tree as Newick but omits the root's
// enclosing parentheses and the trailing ";" (spec §6's subtree_only
// option), writing only the comma-separated list of the root's child
// expressions. Grounded on original_source/stitchup.cpp's
// writeSubtree(..., noBrackets=true) at the top-level call.
func (t *Tree) NewickSubtree(precision int) (string, error) {
	if precision < 1 {
		return "", fmt.Errorf("clustertree.NewickSubtree(precision=%d): %w", precision, ErrInvalidPrecision)
	}
	root, err := t.Root()
	if err != nil {
		return "", err
	}
	c, err := t.Cluster(root)
	if err != nil {
		return "", err
	}
	if c.IsLeaf() {
		return c.Name, nil
	}

	var sb strings.Builder
	for i, link := range c.Links {
		if i > 0 {
			sb.WriteByte(',')
		}
		if err := t.writeNode(&sb, link.Child, precision); err != nil {
			return "", err
		}
		sb.WriteByte(':')
		sb.WriteString(formatLength(link.Length, precision))
	}

	return sb.String(), nil
}

func (t *Tree) writeNode(sb *strings.Builder, id int, precision int) error {
	c, err := t.Cluster(id)
	if err != nil {
		return err
	}
	if c.IsLeaf() {
		sb.WriteString(c.Name)

		return nil
	}

	sb.WriteByte('(')
	for i, link := range c.Links {
		if i > 0 {
			sb.WriteByte(',')
		}
		if err := t.writeNode(sb, link.Child, precision); err != nil {
			return err
		}
		sb.WriteByte(':')
		sb.WriteString(formatLength(link.Length, precision))
	}
	sb.WriteByte(')')

	return nil
}

// formatLength renders a branch length to precision fractional digits,
// collapsing non-positive lengths to the bare literal "0".
func formatLength(length float64, precision int) string {
	if length <= 0 {
		return "0"
	}

	return strconv.FormatFloat(length, 'f', precision, 64)
}
