//go:build !arcadedebug

package invariant

const debugBuild = false
