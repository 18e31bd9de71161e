// Copyright © Rantau Kemiding Homestay, 2026.

// This file is part of Homestay.
//
// Homestay is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Homestay is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Homestay.  If not, see <https://www.gnu.org/licenses/>.

package main

// Worker for background processing

import (
	"runtime"
	"time"
)

// worker closes idle pages, and all pages when done.
func (s *ViewerState) worker(
	chSweep <-chan time.Time,
	done <-chan bool) {

	for {
		// returns to client sooner?
		runtime.Gosched()

		select {

		case <-chSweep:
			if n := s.sweep(); n > 0 {
				s.app.infoLog.Printf("Closed %d idle pages, %d open", n, s.count())
			}

		case <-done:
			s.stopAll()
			return
		}
	}
}
