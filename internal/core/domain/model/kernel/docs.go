// Package kernel provides core domain primitives shared by every aggregate
// in the parcel delivery system. It currently contains the UUID value object
// used as the identity type for parcels and user accounts.
//
// Kernel types are immutable value objects: the zero value is invalid and
// instances must be created through the provided factory functions, which
// enforce validation at construction time.
package kernel
