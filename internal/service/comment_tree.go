package service

import (
	"github.com/google/uuid"

	"github.com/inkpress/blog-service/internal/model"
)

// BuildCommentTree shapes a flat, creation-time-ordered row set into a forest.
// First pass indexes every row as a node with an empty reply list; second pass
// attaches each node to its parent, or promotes it to a root when the parent
// is missing from the set. Insertion order keeps roots and every reply list in
// creation-time order, and no recursion means depth never matters.
func BuildCommentTree(rows []*model.FullComment) []*model.CommentNode {
	index := make(map[uuid.UUID]*model.CommentNode, len(rows))
	nodes := make([]*model.CommentNode, 0, len(rows))
	for _, row := range rows {
		node := &model.CommentNode{
			FullComment: *row,
			Replies:     []*model.CommentNode{},
		}
		index[row.Comment.ID] = node
		nodes = append(nodes, node)
	}

	roots := []*model.CommentNode{}
	for _, node := range nodes {
		if parentID := node.Comment.ParentID; parentID != nil {
			if parent, ok := index[*parentID]; ok && parent != node {
				parent.Replies = append(parent.Replies, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	return roots
}
