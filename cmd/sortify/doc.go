// Command sortify sorts the files below a directory into per-extension
// folders. It offers a flag-driven surface for scripted use and a guided
// interactive flow for first-time runs.
package main
