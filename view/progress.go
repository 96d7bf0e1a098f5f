package view

import (
	"math"

	"github.com/Arham2306/Focus-Flow-Web-App/domain"
)

// ProgressSummary is the completion ratio of a task subset.
type ProgressSummary struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
	Percent   int `json:"percent"`
}

// Progress counts completed tasks. An empty subset reports 0 percent.
func Progress(tasks []domain.Task) ProgressSummary {
	p := ProgressSummary{Total: len(tasks)}
	for _, t := range tasks {
		if t.Status == domain.StatusCompleted {
			p.Completed++
		}
	}
	p.Percent = percent(p.Completed, p.Total)
	return p
}

func percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Floor(float64(part)*100/float64(total) + 0.5))
}

// NodeState is the position of a quest node relative to the active one.
type NodeState string

const (
	NodePassed  NodeState = "passed"
	NodeCurrent NodeState = "current"
	NodeLocked  NodeState = "locked"
)

// Biome names the stretch of the quest path a node sits on.
type Biome string

const (
	BiomeDawnValley Biome = "Dawn Valley"
	BiomeHighlands  Biome = "Highlands"
	BiomeSummitPath Biome = "Summit Path"
)

// QuestNode is one task placed on the quest path.
type QuestNode struct {
	Task  domain.Task `json:"task"`
	Index int         `json:"index"`
	State NodeState   `json:"state"`
	Biome Biome       `json:"biome"`
}

// QuestMap is the linear adventure projection of a task subset.
type QuestMap struct {
	ActiveIndex int         `json:"activeIndex"`
	Percent     int         `json:"percent"`
	Done        bool        `json:"done"`
	Nodes       []QuestNode `json:"nodes"`
}

// ActiveIndex is the position of the first open task, or len(tasks) when
// every task is completed.
func ActiveIndex(tasks []domain.Task) int {
	for i, t := range tasks {
		if t.Status == domain.StatusTodo {
			return i
		}
	}
	return len(tasks)
}

// Quest lays tasks out on the quest path in the order given.
func Quest(tasks []domain.Task) QuestMap {
	active := ActiveIndex(tasks)
	q := QuestMap{
		ActiveIndex: active,
		Percent:     percent(active, len(tasks)),
		Done:        active == len(tasks),
		Nodes:       make([]QuestNode, len(tasks)),
	}
	for i, t := range tasks {
		state := NodeLocked
		switch {
		case i < active:
			state = NodePassed
		case i == active:
			state = NodeCurrent
		}
		q.Nodes[i] = QuestNode{Task: t.Clone(), Index: i, State: state, Biome: biomeAt(i, len(tasks))}
	}
	return q
}

func biomeAt(index, total int) Biome {
	progress := float64(index) / float64(max(1, total))
	switch {
	case progress < 0.33:
		return BiomeDawnValley
	case progress < 0.66:
		return BiomeHighlands
	default:
		return BiomeSummitPath
	}
}
