// Package engine locates analyzer scripts.
//
// Two flavours are known, JSLint and JSHint. Both follow the same calling
// convention: the script defines a global function named after the flavour
// in upper case, which is called as ENTRY(source, options) and leaves its
// findings in ENTRY.errors. The bundled scripts are embedded in the binary;
// they are stand-ins covering a subset of the upstream rules. NewDirLoader
// serves replacements, such as the upstream scripts, from disk.
package engine
