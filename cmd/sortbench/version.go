// Copyright 2023 Sneller, Inc.
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

package main

import (
	"fmt"
	"runtime/debug"
)

// version describes the binary from its build info.
func version() (string, bool) {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "", false
	}
	rev, hasRev := setting(bi, "vcs.revision")
	date, hasDate := setting(bi, "vcs.time")
	switch {
	case hasRev && hasDate:
		return fmt.Sprintf("%s (date: %s, revision: %s)", bi.GoVersion, date, rev), true
	case hasRev:
		return fmt.Sprintf("%s (revision: %s)", bi.GoVersion, rev), true
	case hasDate:
		return fmt.Sprintf("%s (date: %s)", bi.GoVersion, date), true
	}
	return bi.GoVersion, true
}

func setting(bi *debug.BuildInfo, key string) (string, bool) {
	for i := range bi.Settings {
		if bi.Settings[i].Key == key {
			return bi.Settings[i].Value, true
		}
	}
	return "", false
}
