package amd64

import (
	"github.com/pattyshack/ershov/architecture"
	"github.com/pattyshack/ershov/platform"
)

type Platform struct {
	os platform.OperatingSystemName
}

func NewPlatform(os platform.OperatingSystemName) platform.Platform {
	switch os {
	case platform.Linux, platform.Darwin:
	default:
		panic("unsupported os: " + os)
	}

	return Platform{
		os: os,
	}
}

func (Platform) ArchitectureName() platform.ArchitectureName {
	return platform.Amd64
}

func (p Platform) OperatingSystemName() platform.OperatingSystemName {
	return p.os
}

func (Platform) Registers() *architecture.RegisterSet {
	return RegisterSet
}
