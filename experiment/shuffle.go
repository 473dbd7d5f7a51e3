package experiment

import (
	"math/rand"
	"sync"
)

// RandSource supplies the random numbers used to shuffle the submission order of behaviors.
// Intn must return a value in [0, n). *rand.Rand satisfies it.
type RandSource interface {
	Intn(n int) int
}

// RandSourceFunc adapts a function to RandSource.
type RandSourceFunc func(n int) int

func (f RandSourceFunc) Intn(n int) int { return f(n) }

type globalRandSource struct{}

func (globalRandSource) Intn(n int) int { return rand.Intn(n) }

// lockedRandSource serializes access to a source that is not safe for concurrent use, such as
// a *rand.Rand shared by concurrent runs.
type lockedRandSource struct {
	src  RandSource
	lock sync.Mutex
}

func (l *lockedRandSource) Intn(n int) int {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.src.Intn(n)
}

// shuffle permutes items in place with the Fisher-Yates algorithm.
func shuffle[T any](items []T, src RandSource) {
	for i := len(items) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
