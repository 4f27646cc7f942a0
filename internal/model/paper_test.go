package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlueprintFullMark(t *testing.T) {
	assert.Equal(t, 90, BlueprintFullMark(Paper1))
	assert.Equal(t, 94, BlueprintFullMark(Paper2))
}

func TestBlueprintShape(t *testing.T) {
	p1 := Blueprint(Paper1)
	assert.Len(t, p1, 15)
	sectionB := 0
	for _, item := range p1 {
		if item.Section == "B" {
			sectionB++
			assert.Equal(t, 8, item.MaxScore)
		}
	}
	assert.Equal(t, 3, sectionB)

	p2 := Blueprint(Paper2)
	assert.Len(t, p2, 11)

	assert.Nil(t, Blueprint(PaperCode("P3")))
}

func TestCategoryFor(t *testing.T) {
	cases := []struct {
		paper    PaperCode
		section  string
		qNo      int
		category string
	}{
		{Paper1, "A", 1, "Functions"},
		{Paper1, "A", 5, "Functions"},
		{Paper1, "A", 6, "Differentiation"},
		{Paper1, "A", 10, "Differentiation"},
		{Paper1, "A", 11, "Applications of Derivative"},
		{Paper1, "B", 15, "Applications of Derivative"},
		{Paper2, "A", 4, "Integration Basics"},
		{Paper2, "A", 5, "Integration by Substitution"},
		{Paper2, "B", 8, "Area Under Curve"},
	}

	for _, tc := range cases {
		category, ok := CategoryFor(tc.paper, tc.section, tc.qNo)
		assert.True(t, ok, "%s %s Q%d", tc.paper, tc.section, tc.qNo)
		assert.Equal(t, tc.category, category)
	}

	_, ok := CategoryFor(PaperCode("P3"), "A", 1)
	assert.False(t, ok)
}

func TestNodeCategoryMapCoversTemplate(t *testing.T) {
	for _, chain := range KnowledgeChainTemplate {
		for _, node := range chain.Nodes {
			_, ok := NodeCategoryMap[node.ID]
			assert.True(t, ok, "node %s has no category mapping", node.ID)
		}
	}
}
