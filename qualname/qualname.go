// Package qualname parses the fully-qualified type names embedded in an
// XNB type manifest - "Microsoft.Xna.Framework.Content.Int32Reader,
// Microsoft.Xna.Framework, Version=4.0.0.0, Culture=neutral,
// PublicKeyToken=842cf8be1de50553"-style strings - down to the bare
// reader/type name a TypeReaderRegistry looks entries up by, and splits
// open generic names into their argument list.
//
// Both functions operate on byte offsets, not rune counts; every
// delimiter in the grammar (',', '[', ']', '`') is ASCII, so there is no
// need to decode the string as anything but bytes.
package qualname

import "unicode"

// StripAssemblyVersion removes the ", Assembly, Version=..., Culture=...,
// PublicKeyToken=..." tail that follows a type name, leaving generic
// argument lists untouched.
//
// Maps "Foo, Key=Bar" -> "Foo".
// Maps "Foo[Bar, Key=Baz], Key=Blarg" -> "Foo[Bar]".
func StripAssemblyVersion(name string) string {
	commaIndex := 0

	for {
		i := indexFrom(name, ',', commaIndex)
		if i < 0 {
			break
		}

		if i+1 < len(name) && name[i+1] == '[' {
			// Skip past the comma in the "],[" part of a generic argument list.
			commaIndex = i + 1
			continue
		}

		// Strip the trailing assembly information after this comma, up to
		// (not including) the next close bracket, if any.
		closeBracket := indexFrom(name, ']', i)
		if closeBracket >= 0 {
			name = name[:i] + name[closeBracket:]
		} else {
			name = name[:i]
		}
		// commaIndex is left unchanged (it is at or before i); the erased
		// segment means the next comma, if any, is now at or after i.
	}

	return name
}

func indexFrom(s string, b byte, from int) int {
	if from > len(s) {
		return -1
	}
	for i := from; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

// SplitGenericName splits "Foo`2[[Bar],[Baz]]" into open = "Foo" and
// args = []string{"Bar", "Baz"}. ok is false if name has no backtick
// generic-arity marker, in which case open and args are unset.
//
// Nested generic arguments - "List`1[[List`1[[Int32]]]]" - are tracked by
// bracket depth so the inner commas and brackets don't split the outer
// argument list early.
func SplitGenericName(name string) (open string, args []string, ok bool) {
	pos := indexFrom(name, '`', 0)
	if pos < 0 {
		return "", nil, false
	}

	open = name[:pos]
	pos++

	for pos < len(name) && unicode.IsDigit(rune(name[pos])) {
		pos++
	}
	for pos < len(name) && name[pos] == '[' {
		pos++
	}

	for pos < len(name) && name[pos] != ']' {
		nesting := 0
		end := pos

		for end < len(name) {
			switch name[end] {
			case '[':
				nesting++
			case ']':
				if nesting > 0 {
					nesting--
				} else {
					goto argDone
				}
			}
			end++
		}
	argDone:

		args = append(args, name[pos:end])
		pos = end

		if pos < len(name) && name[pos] == ']' {
			pos++
		}
		if pos < len(name) && name[pos] == ',' {
			pos++
		}
		if pos < len(name) && name[pos] == '[' {
			pos++
		}
	}

	return open, args, true
}
