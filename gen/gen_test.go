package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

const fixtureUnion = `package events

type Event interface {
	isEvent()
	Variant() EventVariant
}

type Message struct {
	Body string
}

func (Message) isEvent() {}

type Retry struct {
	Attempts uint32
}

func (Retry) isEvent() {}

type Shutdown struct{}

func (*Shutdown) isEvent() {}
`

func writeFixture(t *testing.T, name, src string) string {
	t.Helper()
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644)
	assert.NoError(t, err)
	return dir
}

func TestParse(t *testing.T) {
	dir := writeFixture(t, "events.go", fixtureUnion)

	u, err := Parse(dir, "Event")
	assert.NoError(t, err)
	assert.Equal(t, "events", u.Package)
	assert.Equal(t, "Event", u.Name)
	assert.Equal(t, "isEvent", u.Marker)
	assert.Equal(t, []string{"Message", "Retry", "Shutdown"}, u.Variants, "variants in source order, pointer receivers included")
	assert.Equal(t, "EventVariant", u.TagName())
}

func TestParseIgnoresTestFiles(t *testing.T) {
	dir := writeFixture(t, "events.go", fixtureUnion)
	extra := `package events

type Fake struct{}

func (Fake) isEvent() {}
`
	err := os.WriteFile(filepath.Join(dir, "events_test.go"), []byte(extra), 0o644)
	assert.NoError(t, err)

	u, err := Parse(dir, "Event")
	assert.NoError(t, err)
	assert.NotContains(t, u.Variants, "Fake")
}

func TestParseErrors(t *testing.T) {
	dir := writeFixture(t, "events.go", fixtureUnion)

	_, err := Parse(dir, "Missing")
	assert.ErrorContains(t, err, "not found")

	dir = writeFixture(t, "notiface.go", `package events

type Event struct{}
`)
	_, err = Parse(dir, "Event")
	assert.ErrorContains(t, err, "not an interface")

	dir = writeFixture(t, "nomarker.go", `package events

type Event interface {
	Exported()
}
`)
	_, err = Parse(dir, "Event")
	assert.ErrorContains(t, err, "marker")

	dir = writeFixture(t, "novariants.go", `package events

type Event interface {
	isEvent()
}
`)
	_, err = Parse(dir, "Event")
	assert.ErrorContains(t, err, "no variants")
}

func TestGenerate(t *testing.T) {
	dir := writeFixture(t, "events.go", fixtureUnion)

	u, err := Parse(dir, "Event")
	assert.NoError(t, err)

	src, err := u.Generate()
	assert.NoError(t, err)

	out := string(src)
	assert.Contains(t, out, "// Code generated by variantgen; DO NOT EDIT.")
	assert.Contains(t, out, "package events")
	assert.Contains(t, out, "type EventVariant uint8")
	assert.Contains(t, out, "EventVariantMessage EventVariant = iota")
	assert.Contains(t, out, "EventVariantRetry")
	assert.Contains(t, out, "EventVariantShutdown")
	assert.Contains(t, out, "func (v EventVariant) Ordinal() int { return int(v) }")
	assert.Contains(t, out, "func (v EventVariant) String() string")
	assert.Contains(t, out, "func (Message) Variant() EventVariant { return EventVariantMessage }")
	assert.Contains(t, out, "func (Shutdown) Variant() EventVariant { return EventVariantShutdown }")
}

func TestDefaultFilename(t *testing.T) {
	got := DefaultFilename("pkg/events", "Event")
	assert.Equal(t, filepath.Join("pkg", "events", "event_variant.go"), got)
}
