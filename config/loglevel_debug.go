//go:build debug

package config

const buildLogLevel = "debug"
