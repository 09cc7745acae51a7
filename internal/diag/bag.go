package diag

import (
	"fmt"

	"fortio.org/safecast"
)

// Bag collects the reports of one line, up to a limit.
type Bag struct {
	items   []Report
	max     uint16
	dropped int
}

// NewBag creates a bag holding at most max reports; max <= 0 means no limit.
func NewBag(max int) *Bag {
	if max <= 0 || max > 0xFFFF {
		max = 0xFFFF
	}
	return &Bag{
		items: make([]Report, 0, min(max, 8)),
		max:   toUint16(max),
	}
}

// Add добавляет отчёт, учитывая лимит.
// Возвращает false, если отчёт не добавлен (достигнут лимит).
func (b *Bag) Add(r Report) bool {
	if len(b.items) >= int(b.max) {
		b.dropped++
		return false
	}
	b.items = append(b.items, r)
	return true
}

// Cap is the limit the bag was created with.
func (b *Bag) Cap() uint16 {
	return b.max
}

// Dropped сколько отчётов не поместилось
func (b *Bag) Dropped() int {
	return b.dropped
}

// HasErrors возвращает true, если есть хотя бы один отчёт с Severity >= Error
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// длина
func (b *Bag) Len() int {
	return len(b.items)
}

// Items возвращает read-only slice отчётов.
// ВАЖНО: не модифицируйте возвращаемый срез! (он указывает на внутренний массив Bag)
func (b *Bag) Items() []Report {
	return b.items
}

func toUint16(n int) uint16 {
	v, err := safecast.Conv[uint16](n)
	if err != nil {
		panic(fmt.Errorf("diag: bag limit overflow: %w", err))
	}
	return v
}
