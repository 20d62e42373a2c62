/*
Package resolve decides which content and demo bundle each course gets.

Resolution runs through three tiers. The override table maps a handful of course ids
straight to hand-authored bundles and takes absolute precedence. Otherwise the
course's tags are tested against an ordered list of categories and the first match
wins, so the order of DefaultCategories is part of the contract. Anything left falls
through to a generic bundle, which guarantees every course gets a working demo.

Bundle texts come from templates embedded under payload/, executed fresh on every
call; Resolve has no side effects and returns identical bundles for identical records.
*/
package resolve
