/*
 * doc.go, part of molequle.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
 *
 * */

//Package qm implements communication with external QM programs, which provide
//the ground state energies and vibrational frequencies that the stability
//classifier consumes. The calculation settings are kept
//as separated as possible from the choice of QM program.
//
//In order to use the XTB handle you need the xtb program, which must be obtained
//from Prof. Stefan Grimme's group. Please cite the xtb references if you use it.
package qm
