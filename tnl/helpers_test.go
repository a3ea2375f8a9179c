package tnl

import "github.com/dekarrin/vnlex/source"

func locZero() source.Location { return source.Location{} }
