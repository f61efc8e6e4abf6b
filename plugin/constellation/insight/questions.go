package insight

import (
	"fmt"
	"sort"

	"github.com/nebulanotes/constellation/plugin/constellation"
)

// maxQuestions caps the path-question output; earliest-generated win.
const maxQuestions = 5

// PathQuestions generates reflective questions from merge groups and
// isolation, in a fixed order: merge-group questions first (input order),
// then one isolated-node question, then one cross-theme bridge question
// when at least two merge groups exist.
func PathQuestions(nodes []constellation.Node) []string {
	questions := []string{}

	var groups []constellation.Node
	for i := range nodes {
		if nodes[i].IsMerged && len(nodes[i].MergedIDs) >= 2 {
			groups = append(groups, nodes[i])
		}
	}

	for _, g := range groups {
		questions = append(questions,
			fmt.Sprintf("You wrote %d thoughts circling the same idea (\"%s\"). What is the one sentence underneath all of them?", len(g.MergedIDs), truncate(g.Text, 40)))
		if len(g.MergedIDs) >= 5 {
			questions = append(questions,
				fmt.Sprintf("This theme has grown to %d thoughts. If you could only keep one, which would you prioritize?", len(g.MergedIDs)))
		}
	}

	for i := range nodes {
		if nodes[i].IsIsolated() {
			questions = append(questions,
				fmt.Sprintf("\"%s\" stands alone. What would have to be true for it to connect to the rest?", truncate(nodes[i].Text, 40)))
			break
		}
	}

	if len(groups) >= 2 {
		largest := make([]constellation.Node, len(groups))
		copy(largest, groups)
		sort.SliceStable(largest, func(i, j int) bool {
			return len(largest[i].MergedIDs) > len(largest[j].MergedIDs)
		})
		questions = append(questions,
			fmt.Sprintf("Your two biggest themes are \"%s\" and \"%s\". Where do they meet?", truncate(largest[0].Text, 30), truncate(largest[1].Text, 30)))
	}

	if len(questions) > maxQuestions {
		questions = questions[:maxQuestions]
	}
	return questions
}
