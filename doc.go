/*
 * doc.go, part of TakeA-REST2.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

/*Package rest2 prepares inputs for replica-exchange-with-solute-tempering (REST2)
molecular dynamics runs. It provides molecular structure and trajectory access,
an atom-selection grammar, and the spatial proximity analysis that decides which
residues belong to the tempered solute.


	**Capabilities**

    Reads GRO and PDB coordinate files, plain or gzip-compressed. Multiple
	concatenated GRO frames or PDB MODEL records are read as a trajectory.

    Resolves selection queries (protein, chain, resname, resid, name,
	backbone, combined with and/or/not) to atom index sets.

    Finds the residues within a cutoff distance of a target selection, from a
	single frame or across a whole trajectory with an occupancy filter.

    Builds the deduplicated solute atom set (target residues plus environment
	residues) consumed by the topology annotator and the replica planner.

All coordinates are kept in Angstroms; GRO files, which store nanometers, are
converted on reading.

Atom indices are 0-based in memory and 1-based in topology and directive files.
The conversion lives in exactly two functions, FileIndex and MemIndex; no other
code is allowed to do that arithmetic inline.

The subpackages grotop, ladder, ranges, plan and gmx build on the index sets
produced here to annotate the topology, compute the temperature ladder and emit
the per-replica PARTIAL_TEMPERING directives.*/
package rest2
