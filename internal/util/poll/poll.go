/*
Copyright 2024 Alexandre Mahdhaoui

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package poll

import (
	"context"
	"errors"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"
)

// Condition reports whether the awaited state has been reached.
type Condition func(ctx context.Context) bool

// Until evaluates cond immediately, then every interval, until it returns true or timeout elapses.
//
// It returns (true, nil) as soon as cond holds and (false, nil) once the timeout elapses. It never sleeps after the
// condition holds. If the parent ctx is canceled first, it returns (false, ctx.Err()).
func Until(ctx context.Context, interval, timeout time.Duration, cond Condition) (bool, error) {
	err := wait.PollUntilContextTimeout(ctx, interval, timeout, true, func(ctx context.Context) (bool, error) {
		return cond(ctx), nil
	})

	switch {
	case err == nil:
		return true, nil
	case ctx.Err() != nil:
		return false, ctx.Err()
	case wait.Interrupted(err), errors.Is(err, context.DeadlineExceeded):
		return false, nil
	default:
		return false, err
	}
}
