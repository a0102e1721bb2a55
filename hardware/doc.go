// Package hardware gathers the packages that touch, or stand in for, the
// physical board: gpio lines, the time source the bus timing is derived
// from, the bit-banged two-wire bus, and the devices hanging off it.
//
// Nothing in here knows about e-bikes. The meter semantics live above, in
// the telemetry, meter and wearlog packages.
package hardware
