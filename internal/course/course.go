// Package course provides problem pools built from course tables.
package course

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Sentinel errors for course lookup and loading.
var (
	ErrUnknownCourse = errors.New("course: unknown course")
	ErrEmptyCourse   = errors.New("course: course has no problems")
)

// Entry maps every rune of Problems to the key sequence Answer.
type Entry struct {
	Answer   string `toml:"answer"`
	Problems string `toml:"problems"`
	Hint     string `toml:"hint,omitempty"`
}

// Course is a named table of entries.
type Course struct {
	Name    string  `toml:"name"`
	Entries []Entry `toml:"entry"`
}

// Size returns the number of problems the course expands to.
func (c Course) Size() int {
	n := 0
	for _, e := range c.Entries {
		n += len([]rune(e.Problems))
	}
	return n
}

// Pool is the flattened problem list of the selected courses.
type Pool struct {
	problems []string
	answers  []string
	hints    []string
}

// Len returns the number of problems.
func (p *Pool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.problems)
}

// Problem returns the text shown for id.
func (p *Pool) Problem(id int) string {
	return p.problems[id]
}

// Answer returns the key sequence that answers id.
func (p *Pool) Answer(id int) string {
	return p.answers[id]
}

// Hint returns the mnemonic for id, or "".
func (p *Pool) Hint(id int) string {
	return p.hints[id]
}

// NewPool flattens courses into a pool in the given order.
func NewPool(courses ...Course) *Pool {
	p := &Pool{}
	for _, c := range courses {
		for _, e := range c.Entries {
			answer := strings.ToLower(strings.TrimSpace(e.Answer))
			for _, r := range e.Problems {
				p.problems = append(p.problems, string(r))
				p.answers = append(p.answers, answer)
				p.hints = append(p.hints, e.Hint)
			}
		}
	}
	return p
}

// Catalog is an ordered set of courses addressable by name.
type Catalog struct {
	courses []Course
	index   map[string]int
}

// NewCatalog builds a catalog. Later courses replace earlier ones with the same name.
func NewCatalog(courses ...Course) *Catalog {
	c := &Catalog{index: map[string]int{}}
	for _, course := range courses {
		c.Add(course)
	}
	return c
}

// Add inserts or replaces a course.
func (c *Catalog) Add(course Course) {
	if i, ok := c.index[course.Name]; ok {
		c.courses[i] = course
		return
	}
	c.index[course.Name] = len(c.courses)
	c.courses = append(c.courses, course)
}

// Courses returns all courses in catalog order.
func (c *Catalog) Courses() []Course {
	return append([]Course(nil), c.courses...)
}

// Names returns the course names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.courses))
	for i, course := range c.courses {
		names[i] = course.Name
	}
	return names
}

// Lookup returns the course with the given name.
func (c *Catalog) Lookup(name string) (Course, bool) {
	i, ok := c.index[name]
	if !ok {
		return Course{}, false
	}
	return c.courses[i], true
}

// Build flattens the named courses into a pool in catalog order.
func (c *Catalog) Build(names []string) (*Pool, error) {
	selected := map[string]struct{}{}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := c.index[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCourse, name)
		}
		selected[name] = struct{}{}
	}
	var courses []Course
	for _, course := range c.courses {
		if _, ok := selected[course.Name]; ok {
			courses = append(courses, course)
		}
	}
	return NewPool(courses...), nil
}

// LoadFile reads a TOML course file. A missing name defaults to the file name.
func LoadFile(path string) (Course, error) {
	var c Course
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return Course{}, fmt.Errorf("failed to decode course %s: %w", path, err)
	}
	if c.Name == "" {
		c.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := Validate(c); err != nil {
		return Course{}, fmt.Errorf("invalid course %s: %w", path, err)
	}
	return c, nil
}

// LoadDir reads every *.toml course in dir, sorted by file name.
// A missing directory yields no courses.
func LoadDir(dir string) ([]Course, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read course directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".toml") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	courses := make([]Course, 0, len(names))
	for _, name := range names {
		c, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, nil
}

// Validate checks that the course has problems and typeable answers.
func Validate(c Course) error {
	if c.Size() == 0 {
		return ErrEmptyCourse
	}
	for i, e := range c.Entries {
		if !validAnswer(strings.ToLower(strings.TrimSpace(e.Answer))) {
			return fmt.Errorf("entry %d: answer %q must be ascii letters", i+1, e.Answer)
		}
	}
	return nil
}

func validAnswer(answer string) bool {
	if answer == "" {
		return false
	}
	for i := 0; i < len(answer); i++ {
		ch := answer[i]
		if ch < 'a' || ch > 'z' {
			return false
		}
	}
	return true
}
