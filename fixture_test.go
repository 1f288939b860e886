package variantset

// event is the union used across the package tests. The tag type and
// the Variant methods mirror what variantgen emits for a three-variant
// sealed interface.

type eventVariant uint8

const (
	eventVariantMessage eventVariant = iota
	eventVariantRetry
	eventVariantShutdown
)

func (v eventVariant) Ordinal() int { return int(v) }

func (v eventVariant) String() string {
	switch v {
	case eventVariantMessage:
		return "Message"
	case eventVariantRetry:
		return "Retry"
	case eventVariantShutdown:
		return "Shutdown"
	}
	return "eventVariant(?)"
}

type event interface {
	isEvent()
	Variant() eventVariant
}

type message struct{ body string }

func (message) isEvent()              {}
func (message) Variant() eventVariant { return eventVariantMessage }

type retry struct{ attempts uint32 }

func (retry) isEvent()              {}
func (retry) Variant() eventVariant { return eventVariantRetry }

type shutdown struct{}

func (shutdown) isEvent()              {}
func (shutdown) Variant() eventVariant { return eventVariantShutdown }

// num is a synthetic union with an unbounded tag domain, used to drive
// the table through growth and collisions.

type numTag int

func (n numTag) Ordinal() int { return int(n) }

type num struct {
	tag numTag
	val int
}

func (n num) Variant() numTag { return n.tag }
