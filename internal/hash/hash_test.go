/*
Copyright © 2019 the oilfate authors.
This file is part of oilfate.

oilfate is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

oilfate is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with oilfate.  If not, see <http://www.gnu.org/licenses/>.
*/

package hash

import "testing"

func TestHash(t *testing.T) {
	a := map[string]interface{}{"Type": "random", "DiffusionCoef": 10.0, "On": true}
	b := map[string]interface{}{"On": true, "DiffusionCoef": 10.0, "Type": "random"}
	c := map[string]interface{}{"Type": "random", "DiffusionCoef": 20.0, "On": true}

	ha := Hash(a)
	for i := 0; i < 10; i++ {
		if h := Hash(b); h != ha {
			t.Fatalf("hash of equal maps differs: %s != %s", h, ha)
		}
	}
	if Hash(c) == ha {
		t.Error("hash of different maps should differ")
	}
	if len(ha) != 32 {
		t.Errorf("hash length: have %d, want 32", len(ha))
	}
}
