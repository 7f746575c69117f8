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

// Command oilfate is a command-line interface for the oilfate oil spill
// transport and weathering model.
package main

import (
	"fmt"
	"os"

	"github.com/spatialmodel/oilfate/oilfateutil"
)

func main() {
	if err := oilfateutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
