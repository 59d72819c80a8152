// Package policy provides optional declarative rules that decide whether a
// live task may be displaced from its slot – for example to require human
// approval before a long-running job is cancelled and replaced.
package policy
