// Package conv converts raw string tokens into typed destinations.
// Enumeration types resolve through an enum.Registry, composite types through
// their designated factory in a factory.Registry, and remaining primitive kinds
// are parsed directly. Single struct fields can be bound with BindField,
// honouring the convert and format struct tags.
package conv
