/*
 * Copyright 2020 grant@lastweekend.com.au
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package doublegen

import (
	"context"
	"fmt"
	"os"
)

// Generate writes the doubles for job to job.Output, returning the number of doubles written.
func Generate(ctx context.Context, job Job) (int, error) {
	if err := job.Validate(); err != nil {
		return 0, err
	}

	pkg, ifaces, err := Load(ctx, job.Dir, job.Pattern, job.Interfaces)
	if err != nil {
		return 0, err
	}

	var header []byte
	if job.Header != "" {
		if header, err = os.ReadFile(job.Header); err != nil {
			return 0, fmt.Errorf("doublegen: reading header: %w", err)
		}
	}

	pkgPath, pkgName := pkg.Path(), pkg.Name()
	if job.Package != "" && job.Package != pkgName {
		pkgPath, pkgName = "", job.Package
	}

	src, err := Render(pkgPath, pkgName, header, ifaces)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(job.Output, src, 0o644); err != nil {
		return 0, fmt.Errorf("doublegen: writing %s: %w", job.Output, err)
	}
	return len(ifaces), nil
}
