// Package sys is the system-call surface user programs see.  A program
// body receives a *Thread and calls the syscall methods on it; every call
// is counted in the thread's histogram and answered with the classic
// teaching-kernel ABI codes (-1 for a rejected call, -0xDEAD for an
// acquisition refused by deadlock detection).
package sys
