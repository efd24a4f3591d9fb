/*
Package workers sizes and runs small worker pools.

Worker counts derive from runtime.GOMAXPROCS rather than runtime.NumCPU, so a
container limited to 2 CPUs on a 64-core host gets 2 (or 4 for I/O) workers:

	n := workers.ForIO(8)
	workers.Run(len(dirs), n, func(i int) {
		dirs[i].ItemCount = count(dirs[i].Path)
	})

The media scanner uses this to count the entries of sub-directories, which is
one directory read per sub-directory.

# Configuration

GALLERY_SCAN_WORKERS fixes the worker count. The per-call limit still applies.
*/
package workers
