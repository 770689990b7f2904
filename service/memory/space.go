package memory

import (
	"errors"
	"fmt"
	"math"
	"sync"
)

// PageSize is the mapping granularity.
const PageSize = 4096

// DefaultHeapBottom is the initial program break.
const DefaultHeapBottom = 0x10000

var (
	ErrMisaligned = errors.New("memory: address not page aligned")
	ErrMapped     = errors.New("memory: page already mapped")
	ErrUnmapped   = errors.New("memory: page not mapped")
	ErrBreak      = errors.New("memory: break out of range")
	ErrPerm       = errors.New("memory: invalid permission")
	ErrRange      = errors.New("memory: range exceeds address space")
)

// Perm is a mapping permission set.
type Perm uint8

const (
	PermRead Perm = 1 << iota
	PermWrite
	PermExec
)

const permMask = PermRead | PermWrite | PermExec

// Space is one process address space.
type Space struct {
	mu         sync.Mutex
	pages      map[uint64]Perm
	heapBottom uint64
	brk        uint64
}

// New creates an empty space with its break at heapBottom.
func New(heapBottom uint64) *Space {
	return &Space{pages: map[uint64]Perm{}, heapBottom: heapBottom, brk: heapBottom}
}

// Map maps every page overlapping [start, start+length); nothing is mapped
// when one of them already is.
func (s *Space) Map(start, length uint64, perm Perm) error {
	if start%PageSize != 0 {
		return fmt.Errorf("map %#x: %w", start, ErrMisaligned)
	}
	if perm == 0 || perm&^permMask != 0 {
		return fmt.Errorf("map %#x perm %d: %w", start, perm, ErrPerm)
	}
	first, last, err := pageRange(start, length)
	if err != nil {
		return fmt.Errorf("map: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for vpn := first; vpn < last; vpn++ {
		if _, ok := s.pages[vpn]; ok {
			return fmt.Errorf("map %#x: %w", vpn*PageSize, ErrMapped)
		}
	}
	for vpn := first; vpn < last; vpn++ {
		s.pages[vpn] = perm
	}
	return nil
}

// Unmap removes every page overlapping [start, start+length); nothing is
// removed when one of them is not mapped.
func (s *Space) Unmap(start, length uint64) error {
	if start%PageSize != 0 {
		return fmt.Errorf("unmap %#x: %w", start, ErrMisaligned)
	}
	first, last, err := pageRange(start, length)
	if err != nil {
		return fmt.Errorf("unmap: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for vpn := first; vpn < last; vpn++ {
		if _, ok := s.pages[vpn]; !ok {
			return fmt.Errorf("unmap %#x: %w", vpn*PageSize, ErrUnmapped)
		}
	}
	for vpn := first; vpn < last; vpn++ {
		delete(s.pages, vpn)
	}
	return nil
}

// Perm returns the permission of the page holding addr.
func (s *Space) Perm(addr uint64) (Perm, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	perm, ok := s.pages[addr/PageSize]
	return perm, ok
}

// Mapped returns the number of mapped pages.
func (s *Space) Mapped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pages)
}

// Brk moves the program break by delta and returns the previous one.
func (s *Space) Brk(delta int64) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.brk
	next := int64(old) + delta
	if next < int64(s.heapBottom) {
		return 0, fmt.Errorf("brk %d from %#x: %w", delta, old, ErrBreak)
	}
	s.brk = uint64(next)
	return old, nil
}

func pageRange(start, length uint64) (uint64, uint64, error) {
	if length > math.MaxUint64-(PageSize-1)-start {
		return 0, 0, fmt.Errorf("%#x+%#x: %w", start, length, ErrRange)
	}
	return start / PageSize, (start + length + PageSize - 1) / PageSize, nil
}
