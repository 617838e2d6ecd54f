package scanner

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/testforge/internal/findings"
	"github.com/scan-io-git/testforge/internal/randsrc"
	"github.com/scan-io-git/testforge/internal/rules"
	"github.com/scan-io-git/testforge/internal/source"
	errors "github.com/scan-io-git/testforge/pkg/shared/errors"
)

const sampleSource = `const express = require('express');
function getUser(id) {
  return db.query("SELECT * FROM t WHERE id=" + id);
}
const password = "hunter2";
el.innerHTML = input;
const n = Math.random();`

func TestParseLevel(t *testing.T) {
	for _, in := range []string{"basic", "Comprehensive", " deep "} {
		_, err := ParseLevel(in)
		assert.NoError(t, err, in)
	}

	_, err := ParseLevel("paranoid")
	assert.ErrorIs(t, err, errors.ErrUnsupportedOption)
}

func TestNewDefaultsToBuiltinCatalog(t *testing.T) {
	s := New(nil, randsrc.Fixed{}, nil)
	assert.Same(t, rules.Default(), s.Catalog())
}

func TestScanQueryConcatenationLine(t *testing.T) {
	s := New(nil, randsrc.Fixed{}, nil)
	got := s.Scan(source.New(sampleSource), LevelBasic)

	var injection []findings.Finding
	for _, f := range got {
		if f.Category == rules.CategorySQLInjection {
			injection = append(injection, f)
		}
	}
	require.Len(t, injection, 1)
	assert.Equal(t, 3, injection[0].Line)
	assert.Equal(t, rules.Medium, injection[0].Severity)
	assert.Equal(t, "SQL Injection Vulnerability", injection[0].Title)

	line, ok := source.New(sampleSource).Line(injection[0].Line)
	require.True(t, ok)
	assert.Contains(t, line, `db.query("SELECT * FROM t WHERE id=" + id)`)
	assert.Equal(t, findings.Fingerprint(line), injection[0].Fingerprint)
}

func TestScanHardcodedSecret(t *testing.T) {
	got := ScanText(`const password = "hunter2";`, LevelBasic)

	require.Len(t, got, 1)
	assert.Equal(t, rules.CategoryHardcodedSecret, got[0].Category)
	assert.Equal(t, rules.High, got[0].Severity)
	assert.Equal(t, 1, got[0].Line)
}

func TestScanLineNumbersPointAtMatches(t *testing.T) {
	doc := source.New(sampleSource)
	for _, f := range New(nil, randsrc.Fixed{}, nil).Scan(doc, LevelBasic) {
		line, ok := doc.Line(f.Line)
		require.True(t, ok)

		matched := false
		for _, r := range rules.Default().Rules() {
			if r.ID == f.RuleID {
				matched = r.Matches(line)
			}
		}
		assert.True(t, matched, "%s at line %d", f.RuleID, f.Line)
	}
}

func TestScanOrderIsLineMajor(t *testing.T) {
	got := New(nil, randsrc.Fixed{}, nil).Scan(source.New(sampleSource), LevelBasic)
	require.NotEmpty(t, got)

	assert.True(t, sort.SliceIsSorted(got, func(i, j int) bool { return got[i].Line < got[j].Line }))

	// line 6 matches three sets, reported in catalog order
	var line6 []string
	for _, f := range got {
		if f.Line == 6 {
			line6 = append(line6, f.Category)
		}
	}
	assert.Equal(t, []string{rules.CategoryXSS, rules.CategoryDangerousAssignment, rules.CategoryInputValidation}, line6)
}

func TestScanSyntheticFindings(t *testing.T) {
	doc := source.New(sampleSource)
	basic := New(nil, randsrc.Fixed{Int: 3}, nil).Scan(doc, LevelBasic)

	for _, level := range []Level{LevelComprehensive, LevelDeep} {
		got := New(nil, randsrc.Fixed{Int: 3}, nil).Scan(doc, level)
		require.Len(t, got, len(basic)+2)

		memory, async := got[len(got)-2], got[len(got)-1]
		assert.Equal(t, "Potential Memory Leak", memory.Title)
		assert.Equal(t, rules.Medium, memory.Severity)
		assert.Equal(t, rules.CategoryMemoryManagement, memory.Category)
		assert.Equal(t, "Async/Await Best Practice", async.Title)
		assert.Equal(t, rules.Low, async.Severity)
		assert.True(t, memory.Synthetic && async.Synthetic)
		assert.Empty(t, memory.Fingerprint)
		assert.Equal(t, 4, memory.Line)
	}
}

func TestScanSyntheticLinesInBounds(t *testing.T) {
	s := New(nil, randsrc.NewSeeded(42), nil)
	doc := source.New(sampleSource)
	for i := 0; i < 200; i++ {
		for _, f := range s.Scan(doc, LevelDeep) {
			assert.GreaterOrEqual(t, f.Line, 1)
			assert.LessOrEqual(t, f.Line, doc.LineCount())
		}
	}
}

func TestScanEmptyInput(t *testing.T) {
	assert.Empty(t, ScanText("", LevelBasic))

	got := New(nil, randsrc.Fixed{Int: 9}, nil).Scan(source.New(""), LevelComprehensive)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Line)
	assert.Equal(t, 1, got[1].Line)
}

func TestScanOrderIndependentWithinSet(t *testing.T) {
	doc := source.New(sampleSource)
	base := New(nil, randsrc.Fixed{}, nil).Scan(doc, LevelBasic)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		sets := rules.Default().Sets()
		for _, set := range sets {
			rng.Shuffle(len(set.Rules), func(a, b int) { set.Rules[a], set.Rules[b] = set.Rules[b], set.Rules[a] })
		}
		shuffled, err := rules.NewCatalog(sets...)
		require.NoError(t, err)

		got := New(shuffled, randsrc.Fixed{}, nil).Scan(doc, LevelBasic)
		assert.ElementsMatch(t, keys(base), keys(got))
	}
}

func TestScanConcurrent(t *testing.T) {
	s := New(nil, randsrc.NewSeeded(1), nil)
	doc := source.New(strings.Repeat(sampleSource+"\n", 20))
	want := len(s.Scan(doc, LevelBasic))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Len(t, s.Scan(doc, LevelDeep), want+2)
		}()
	}
	wg.Wait()
}

func keys(list []findings.Finding) []string {
	out := make([]string, 0, len(list))
	for _, f := range list {
		out = append(out, fmt.Sprintf("%s@%d", f.RuleID, f.Line))
	}
	return out
}
