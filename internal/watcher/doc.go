// Package watcher delivers debounced batches of file changes under a
// directory tree, skipping excluded and hidden directories.
package watcher
