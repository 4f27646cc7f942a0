package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleStandards = `# Comprehensive Learning Standards

## Form 4

### Form 4 Chapter 1: Functions

#### Functions and Notation

- 1.1.1 Explain function using graphical representations.
- 1.1.2 Determine domain and range of a function.

#### Composite Functions

- 1.2.1 Determine the composite functions.

## Form 5

### Form 5 Chapter 2: Differentiation

- 2.1.1 Determine the value of the limit of a function.
- A note without a numeric code
`

func TestParseLearningStandardsChapters(t *testing.T) {
	chapters := ParseLearningStandards(sampleStandards)

	require.Len(t, chapters, 2)

	functions := chapters[0]
	assert.Equal(t, "Form 4 Chapter 1: Functions", functions.Title)
	assert.Equal(t, "functions", functions.Normalized)
	require.NotNil(t, functions.Stage)
	assert.Equal(t, "Form 4", *functions.Stage)
	assert.Len(t, functions.Standards, 3)
	require.Len(t, functions.Sections, 2)
	assert.Equal(t, "Functions and Notation", functions.Sections[0].Title)
	assert.Len(t, functions.Sections[0].Standards, 2)
	assert.Len(t, functions.Sections[1].Standards, 1)
}

func TestParseLearningStandardsCodes(t *testing.T) {
	chapters := ParseLearningStandards(sampleStandards)

	functions := chapters[0]
	first := functions.Standards[0]
	require.NotNil(t, first.Code)
	assert.Equal(t, "1.1.1", *first.Code)
	assert.Equal(t, "Explain function using graphical representations.", first.Statement)
	assert.Equal(t, "1.1.1 Explain function using graphical representations.", first.Label)
	assert.Equal(t, "functions-1_1_1", first.ID)
	require.NotNil(t, first.SectionTitle)
	assert.Equal(t, "Functions and Notation", *first.SectionTitle)
}

func TestParseLearningStandardsWithoutCode(t *testing.T) {
	chapters := ParseLearningStandards(sampleStandards)

	diff := chapters[1]
	assert.Equal(t, "differentiation", diff.Normalized)
	require.Len(t, diff.Standards, 2)

	noCode := diff.Standards[1]
	assert.Nil(t, noCode.Code)
	assert.Equal(t, "A note without a numeric code", noCode.Statement)
	assert.Equal(t, "differentiation-2", noCode.ID)
	// 没有 #### 小节时落入 General
	require.NotNil(t, noCode.SectionTitle)
	assert.Equal(t, "General", *noCode.SectionTitle)
}

func TestParseLearningStandardsEmptyInput(t *testing.T) {
	assert.Empty(t, ParseLearningStandards(""))
	// 没有章节时的条目被忽略
	assert.Empty(t, ParseLearningStandards("- 1.1.1 Orphan standard\n"))
}

func TestBuildChapterKey(t *testing.T) {
	assert.Equal(t, "quadratic-functions", buildChapterKey("Form 4 Chapter 2: Quadratic Functions"))
	assert.Equal(t, "integration", buildChapterKey("Integration"))
}
