package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleBonus(t *testing.T) {
	assert.Equal(t, 12.0, titleBonus("React JS Developer"))
	assert.Equal(t, 12.0, titleBonus("Reactjs Frontend Developer"))
	assert.Equal(t, -50.0, titleBonus("Node.js Backend Developer"))
	assert.Equal(t, -50.0, titleBonus("Node JS Developer"))
	assert.Equal(t, 0.0, titleBonus("Software Engineer"))
	// Both patterns can fire on the same title.
	assert.Equal(t, -38.0, titleBonus("React JS Developer / Node JS Developer"))
}

func TestIsCombinedStackTitle(t *testing.T) {
	assert.True(t, isCombinedStackTitle("MERN Stack Developer"))
	assert.True(t, isCombinedStackTitle("Full Stack Engineer"))
	assert.True(t, isCombinedStackTitle("Fullstack Developer"))
	assert.False(t, isCombinedStackTitle("Backend Developer"))
	assert.False(t, isCombinedStackTitle("React Developer"))
}

func TestFullstackNeedsNode(t *testing.T) {
	t.Run("non-fullstack titles always pass", func(t *testing.T) {
		assert.True(t, fullstackNeedsNode("React Developer", "python only", nil))
	})

	t.Run("fullstack title without node fails", func(t *testing.T) {
		assert.False(t, fullstackNeedsNode("Fullstack Developer", "react and python", nil))
	})

	t.Run("node in description passes", func(t *testing.T) {
		assert.True(t, fullstackNeedsNode("Fullstack Developer", "react and node.js", nil))
	})

	t.Run("node in tags passes", func(t *testing.T) {
		assert.True(t, fullstackNeedsNode("Fullstack Engineer", "react only", []string{"NodeJS"}))
	})
}

func TestIsWebDevTitle(t *testing.T) {
	for _, title := range []string{
		"Web Developer",
		"Frontend Developer",
		"Front-end Engineer",
		"React Developer",
		"React.js Developer",
		"Next.js Developer",
	} {
		assert.True(t, isWebDevTitle(title), title)
	}
	for _, title := range []string{
		"Backend Developer",
		"Data Engineer",
		"QA Analyst",
	} {
		assert.False(t, isWebDevTitle(title), title)
	}
}
