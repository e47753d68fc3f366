package docs

import (
	"bufio"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// TestTopics keeps the documentation in sync with itself: every topic listed
// in readme.md must load, and every .md file (readme aside) must be listed
// in readme.md.
func TestTopics(t *testing.T) {
	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	linkRe := regexp.MustCompile(`\[(\w+)\]\((\w+)\.md\)`)
	var topicsInReadme []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		for _, m := range linkRe.FindAllStringSubmatch(scanner.Text(), -1) {
			topicsInReadme = append(topicsInReadme, m[2])
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("failed to read readme.md: %v", err)
	}
	if len(topicsInReadme) == 0 {
		t.Fatal("readme.md lists no topics")
	}

	for _, topic := range topicsInReadme {
		if _, err := GetTopic(topic); err != nil {
			t.Errorf("topic %q listed in readme.md but not loadable: %v", topic, err)
		}
	}

	all, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() unexpected error = %v", err)
	}
	listed := make(map[string]bool)
	for _, topic := range topicsInReadme {
		listed[topic] = true
	}
	for _, topic := range all {
		if !listed[topic] {
			t.Errorf("topic %q exists but is not listed in readme.md", topic)
		}
	}
}

// TestTopicsStartWithHeading parses every topic as markdown and checks it
// opens with a level-1 heading, so rendered output always has a title.
func TestTopicsStartWithHeading(t *testing.T) {
	all, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() unexpected error = %v", err)
	}
	all = append(all, "readme")

	for _, topic := range all {
		content, err := GetTopic(topic)
		if err != nil {
			t.Fatalf("GetTopic(%q) unexpected error = %v", topic, err)
		}
		source := []byte(content)
		root := goldmark.DefaultParser().Parse(text.NewReader(source))

		first := root.FirstChild()
		heading, ok := first.(*ast.Heading)
		if !ok {
			t.Errorf("topic %q does not start with a heading", topic)
			continue
		}
		if heading.Level != 1 {
			t.Errorf("topic %q starts with a level-%d heading, want level 1", topic, heading.Level)
		}
	}
}

func TestGetTopicStar(t *testing.T) {
	content, err := GetTopic("*")
	if err != nil {
		t.Fatalf("GetTopic(*) unexpected error = %v", err)
	}
	for _, want := range []string{"# Company format", "# Resolution", "# Tools"} {
		if !strings.Contains(content, want) {
			t.Errorf("GetTopic(*) missing %q", want)
		}
	}
}

func TestGetTopicUnknown(t *testing.T) {
	if _, err := GetTopic("nope"); err == nil {
		t.Error("GetTopic(nope) expected an error")
	}
}
