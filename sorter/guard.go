/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package sorter

import (
	"context"
	"strings"
	"time"

	"bennypowers.dev/twsort/fragment"
	"bennypowers.dev/twsort/internal/logger"
)

// Guard wraps an external sorter so that it never fails its caller.
//
// Blank input is returned unchanged. Errors, panics, timeouts and results
// without a class attribute are logged and answered by fallback for that
// call only, as are results whose class attribute is empty. A result
// equal to the input is returned as is. The timeout is delivered through
// the context passed to ext, which must return once it is done.
func Guard(ext External, fallback Func, opts Options, timeout time.Duration) Func {
	return func(classString string) (result string) {
		if strings.TrimSpace(classString) == "" {
			return classString
		}

		defer func() {
			if p := recover(); p != nil {
				logger.Warn("external class sorter panicked: %v", p)
				result = fallback(classString)
			}
		}()

		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		out, err := ext.SortFragment(ctx, fragment.Wrap(classString), opts)
		if err != nil {
			logger.Warn("error using external class sorter: %v", err)
			return fallback(classString)
		}

		sorted, err := fragment.ExtractClass(out)
		if err != nil {
			logger.Warn("external class sorter returned unusable fragment %q: %v", out, err)
			return fallback(classString)
		}
		if strings.TrimSpace(sorted) == "" {
			logger.Warn("external class sorter dropped every class from %q", classString)
			return fallback(classString)
		}
		return sorted
	}
}
