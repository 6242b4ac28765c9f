package colors

import "github.com/ganemedelabs/saturon/mat"

// buildGraph constructs the undirected adjacency list from each
// registered model's single bridge edge. Called lazily and cached;
// invalidated by every registry mutation.
func (r *Registry) buildGraph() map[string][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.graph != nil {
		return r.graph
	}
	g := map[string][]string{}
	add := func(a, b string) {
		g[a] = append(g[a], b)
		g[b] = append(g[b], a)
	}
	for name, m := range r.models {
		if m.Bridge != "" {
			add(name, m.Bridge)
		}
	}
	r.graph = g
	if r.paths == nil {
		r.paths = map[string][]string{}
	}
	return g
}

// Path returns the shortest sequence of model names from `from` to
// `to`, memoized under "from-to". Returns a single-element path for
// the identity case.
func (r *Registry) Path(from, to string) ([]string, error) {
	from = normalizeFunctionName(from)
	to = normalizeFunctionName(to)
	if from == to {
		return []string{from}, nil
	}
	key := from + "-" + to

	r.mu.RLock()
	if r.paths != nil {
		if p, ok := r.paths[key]; ok {
			r.mu.RUnlock()
			return p, nil
		}
	}
	r.mu.RUnlock()

	g := r.buildGraph()

	// BFS
	prev := map[string]string{}
	visited := map[string]bool{from: true}
	queue := []string{from}
	found := false
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == to {
			found = true
			break
		}
		for _, next := range g[cur] {
			if !visited[next] {
				visited[next] = true
				prev[next] = cur
				queue = append(queue, next)
			}
		}
	}
	if !found {
		return nil, newErr(KindLookup, from+" -> "+to, "no path found")
	}

	var path []string
	cur := to
	for cur != from {
		path = append([]string{cur}, path...)
		cur = prev[cur]
	}
	path = append([]string{from}, path...)

	r.mu.Lock()
	r.paths[key] = path
	r.mu.Unlock()
	return path, nil
}

// Convert walks the path from `from` to `to`, applying each edge's
// ToBridge or FromBridge. Alpha passes through unchanged.
func (r *Registry) Convert(from, to string, coords mat.Vec3) (mat.Vec3, error) {
	path, err := r.Path(from, to)
	if err != nil {
		return mat.Vec3{}, err
	}
	cur := coords
	for i := 0; i+1 < len(path); i++ {
		a, b := path[i], path[i+1]
		ma, _ := r.Model(a)
		mb, _ := r.Model(b)
		switch {
		case ma != nil && ma.Bridge == b && ma.ToBridge != nil:
			cur = ma.ToBridge(cur)
		case mb != nil && mb.Bridge == a && mb.FromBridge != nil:
			cur = mb.FromBridge(cur)
		default:
			return mat.Vec3{}, newErr(KindLookup, a+"->"+b, "no edge function available")
		}
	}
	return cur, nil
}
