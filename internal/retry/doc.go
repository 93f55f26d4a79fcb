// Package retry repeats frame copies and renames that fail because a file
// is briefly busy, for example while a renderer is still writing it or a
// network share stalls.
//
//	exec := retry.NewExecutor(retry.NewFileOpClassifier(), retry.DefaultFileBackoff()).
//	    OnRetry(func(op retry.FileOp, n int, err error, delay time.Duration) {
//	        log.Printf("%s: retry %d in %v: %v", op, n, delay, err)
//	    })
//
//	err := exec.Run(ctx, retry.FileOp{Kind: "move", Source: src, Target: dst}, func() error {
//	    return os.Rename(src, dst)
//	})
//
// FileOpClassifier treats EBUSY, EAGAIN, ETXTBSY, EINTR and timeouts as
// transient. Missing files and permission errors fail on the first try.
package retry
