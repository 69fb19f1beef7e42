package functree

// Version is the release of the library and the functree binary.
// Release builds override it with -ldflags "-X github.com/aretw0/functree.Version=...".
var Version = "0.3.0"
