// Package cycle maintains the predecessor chain of a cycle candidate
// while it is reconstructed from a shortest-path search, and repairs
// variable/negation collisions on the fly.
//
// Both search methods walk a path in an auxiliary graph and project it
// back onto literals one step at a time. The projected walk may visit
// a variable and its negation; such a pair never belongs to a valid
// odd-cycle inequality, but the walk around it often does. Extend
// removes the pair and relinks (reversing the enclosed segment where
// needed), so that many damaged walks still yield a valid shorter odd
// cycle instead of being discarded.
package cycle
