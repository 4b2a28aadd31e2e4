// This file is part of Dosaudio.
//
// Dosaudio is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Dosaudio is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Dosaudio.  If not, see <https://www.gnu.org/licenses/>.

// Package paths contains functions to prepare paths for dosaudio resources.
//
// The ResourcePath() function returns the correct path to the resource
// directory or file specified in the arguments. It handles the creation of
// directories as required but does not otherwise touch or create files.
//
// For the release build the base path is placed in the user's configuration
// directory, which is dependent on the host OS. For example, on a modern Linux
// system the preferences file will be:
//
//	/home/user/.config/dosaudio/preferences
//
// For the development build (built without the release tag) the base path is
// the .dosaudio directory in the current working directory.
package paths
