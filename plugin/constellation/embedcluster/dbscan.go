package embedcluster

// dbscan runs density-based clustering over the vectors using cosine
// distance (1 - cosine similarity). Returns a cluster label per vector;
// -1 marks noise.
func dbscan(vectors [][]float32, epsilon float64, minPoints int) []int {
	const (
		unvisited = -2
		noise     = -1
	)

	labels := make([]int, len(vectors))
	for i := range labels {
		labels[i] = unvisited
	}

	nextCluster := 0
	for i := range vectors {
		if labels[i] != unvisited {
			continue
		}

		neighbors := regionQuery(vectors, i, epsilon)
		if len(neighbors) < minPoints {
			labels[i] = noise
			continue
		}

		cluster := nextCluster
		nextCluster++
		labels[i] = cluster

		// Expand the cluster; the frontier grows as core points are found.
		for k := 0; k < len(neighbors); k++ {
			n := neighbors[k]
			if labels[n] == noise {
				labels[n] = cluster // border point
			}
			if labels[n] != unvisited {
				continue
			}
			labels[n] = cluster
			more := regionQuery(vectors, n, epsilon)
			if len(more) >= minPoints {
				neighbors = append(neighbors, more...)
			}
		}
	}
	return labels
}

// regionQuery returns the indices within epsilon cosine distance of point i,
// including i itself.
func regionQuery(vectors [][]float32, i int, epsilon float64) []int {
	var neighbors []int
	for j := range vectors {
		if 1-CosineSimilarity(vectors[i], vectors[j]) <= epsilon {
			neighbors = append(neighbors, j)
		}
	}
	return neighbors
}
