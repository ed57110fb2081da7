// Package service implements the bill operations shared by the terminal
// front end and the HTTP surface.
package service
