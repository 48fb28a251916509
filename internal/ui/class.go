package ui

import twmerge "github.com/Oudwins/tailwind-merge-go"

// Class merges tailwind class lists; later classes win on conflicts.
func Class(classes ...string) string {
	return twmerge.Merge(classes...)
}

const (
	ButtonClass = "inline-flex items-center rounded-md bg-emerald-600 px-4 py-2 text-sm font-medium text-white hover:bg-emerald-700"
	InputClass  = "block w-full rounded-md border border-gray-300 px-3 py-2 text-sm"
	LinkClass   = "text-sm text-gray-600 hover:text-gray-900"
)
