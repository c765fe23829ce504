package reader

import (
	"bufio"
	"io"
	"strings"
)

// characterizeKinds are the line prefixes characterize_file indexes,
// lowercased (§4.11).
var characterizeKinds = []string{"scalars", "vectors", "tensors", "normals", "tcoords", "field"}

// characterizeInitialCapacity is the initial per-kind slice capacity,
// matching the original scanner's growth policy (doubling thereafter).
const characterizeInitialCapacity = 25

// Characterization is the result of a characterize_file pass: for
// each of the six indexed keyword kinds, the ordered list of names
// that appeared as that kind's second whitespace-separated token.
type Characterization struct {
	names map[string][]string
}

// NamesFor returns the name list accumulated for kind (one of
// characterizeKinds, case-insensitive), or nil if kind is not indexed.
func (c *Characterization) NamesFor(kind string) []string {
	return c.names[strings.ToLower(kind)]
}

// NameAt returns the i-th name characterize_file recorded for kind,
// or "" with ok=false if out of range.
func (c *Characterization) NameAt(kind string, i int) (string, bool) {
	list := c.NamesFor(kind)
	if i < 0 || i >= len(list) {
		return "", false
	}

	return list[i], true
}

// Characterize performs the secondary index-only pass over r (§4.11):
// it reads every line and, for each line whose first whitespace-
// separated token, lowercased, begins with one of characterizeKinds,
// appends the line's second token to that kind's name list. It does
// not parse array payloads, so it is safe to run over a source the
// caller will re-open for the real parse.
func Characterize(r io.Reader) (*Characterization, error) {
	c := &Characterization{names: make(map[string][]string, len(characterizeKinds))}
	for _, k := range characterizeKinds {
		c.names[k] = make([]string, 0, characterizeInitialCapacity)
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}

		first := strings.ToLower(fields[0])
		kind := ""
		for _, k := range characterizeKinds {
			if strings.HasPrefix(first, k) {
				kind = k
				break
			}
		}

		if kind == "" {
			continue
		}

		c.names[kind] = append(c.names[kind], fields[1])
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return c, nil
}
