// Package slog provides log/slog decorators for pagemedia interfaces.
package slog
