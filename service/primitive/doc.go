// Package primitive provides the blocking mechanics of the kernel's
// synchronization objects: spin and blocking mutexes, counting semaphores
// and condition variables.  Primitives know nothing about scheduling policy;
// they park and re-admit tasks through the Processor they are handed.
package primitive
