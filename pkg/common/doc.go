// Package common holds the HTTP helpers shared by the api packages: JSON
// response rendering, service error mapping and request validation.
package common
