package platform

import (
	"github.com/pattyshack/ershov/architecture"
)

type ArchitectureName string
type OperatingSystemName string

const (
	Amd64 = ArchitectureName("amd64")

	Linux  = OperatingSystemName("linux")
	Darwin = OperatingSystemName("darwin")
)

type Platform interface {
	ArchitectureName() ArchitectureName
	OperatingSystemName() OperatingSystemName

	// Registers available on the architecture.  The general registers' order
	// is the canonical allocation order.
	Registers() *architecture.RegisterSet
}
