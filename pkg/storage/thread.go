package storage

// threadOrder reconstructs a comment thread as an id sequence: walk parent
// pointers up to the root, then gather descendants breadth-first from the
// adjacency index. A visited set makes the walk terminate even if stored
// data contains a malformed parent cycle.
func threadOrder(commentID string, parentOf func(string) string, childrenOf func(string) []string) []string {
	// Walk up to the root.
	root := commentID
	seen := map[string]bool{root: true}
	for {
		parent := parentOf(root)
		if parent == "" || seen[parent] {
			break
		}
		seen[parent] = true
		root = parent
	}

	// Breadth-first over the parent index. Children are indexed in creation
	// order, so each level comes out in creation order too.
	visited := map[string]bool{root: true}
	order := []string{root}
	queue := []string{root}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, child := range childrenOf(id) {
			if visited[child] {
				continue
			}
			visited[child] = true
			order = append(order, child)
			queue = append(queue, child)
		}
	}
	return order
}
