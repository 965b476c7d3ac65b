package builtin

import (
	"fmt"

	"github.com/zeebo/xxh3"

	"github.com/ardnew/ctext/engine"
)

func hashOperators() []engine.Operator {
	return []engine.Operator{
		{
			Name:        "hash",
			Description: "Replaces the value with its 64-bit xxh3 digest in hexadecimal.",
			Impl: transform(func(in string) string {
				return fmt.Sprintf("%016x", xxh3.HashString(in))
			}),
		},
	}
}
