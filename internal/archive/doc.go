// Package archive packages a source tree into a gzip-compressed tarball
// for upload to the artifact bucket.
//
// Version-control metadata (.git) and Python bytecode caches
// (__pycache__, *.pyc) are excluded at any depth. Everything else is
// included verbatim so the workload sees a complete code tree.
package archive
