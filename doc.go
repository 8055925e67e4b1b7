// Package xconv defines the error taxonomy shared by the conversion packages.
//
// Enumerations are resolved by package enum, composite values are built by
// registered factories in package factory, and package conv dispatches a raw
// token to either of them based on the destination type.
package xconv
