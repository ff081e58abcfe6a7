package catalog

// bibleBooks is the built-in canon in reading order. Word counts are
// approximate (KJV) and only weight the completion percentage.
var bibleBooks = []Book{
	{ID: "gen", Name: "Genesis", Testament: OldTestament, Chapters: 50, WordCount: 38262},
	{ID: "exo", Name: "Exodus", Testament: OldTestament, Chapters: 40, WordCount: 32685},
	{ID: "lev", Name: "Leviticus", Testament: OldTestament, Chapters: 27, WordCount: 24541},
	{ID: "num", Name: "Numbers", Testament: OldTestament, Chapters: 36, WordCount: 32896},
	{ID: "deu", Name: "Deuteronomy", Testament: OldTestament, Chapters: 34, WordCount: 28352},
	{ID: "jos", Name: "Joshua", Testament: OldTestament, Chapters: 24, WordCount: 18854},
	{ID: "jdg", Name: "Judges", Testament: OldTestament, Chapters: 21, WordCount: 18966},
	{ID: "rut", Name: "Ruth", Testament: OldTestament, Chapters: 4, WordCount: 2574},
	{ID: "1sa", Name: "1 Samuel", Testament: OldTestament, Chapters: 31, WordCount: 25048},
	{ID: "2sa", Name: "2 Samuel", Testament: OldTestament, Chapters: 24, WordCount: 20600},
	{ID: "1ki", Name: "1 Kings", Testament: OldTestament, Chapters: 22, WordCount: 24513},
	{ID: "2ki", Name: "2 Kings", Testament: OldTestament, Chapters: 25, WordCount: 23517},
	{ID: "1ch", Name: "1 Chronicles", Testament: OldTestament, Chapters: 29, WordCount: 20365},
	{ID: "2ch", Name: "2 Chronicles", Testament: OldTestament, Chapters: 36, WordCount: 26069},
	{ID: "ezr", Name: "Ezra", Testament: OldTestament, Chapters: 10, WordCount: 7440},
	{ID: "neh", Name: "Nehemiah", Testament: OldTestament, Chapters: 13, WordCount: 10480},
	{ID: "est", Name: "Esther", Testament: OldTestament, Chapters: 10, WordCount: 5633},
	{ID: "job", Name: "Job", Testament: OldTestament, Chapters: 42, WordCount: 18098},
	{ID: "psa", Name: "Psalms", Testament: OldTestament, Chapters: 150, WordCount: 42704},
	{ID: "pro", Name: "Proverbs", Testament: OldTestament, Chapters: 31, WordCount: 15038},
	{ID: "ecc", Name: "Ecclesiastes", Testament: OldTestament, Chapters: 12, WordCount: 5579},
	{ID: "sng", Name: "Song of Solomon", Testament: OldTestament, Chapters: 8, WordCount: 2658},
	{ID: "isa", Name: "Isaiah", Testament: OldTestament, Chapters: 66, WordCount: 37036},
	{ID: "jer", Name: "Jeremiah", Testament: OldTestament, Chapters: 52, WordCount: 42654},
	{ID: "lam", Name: "Lamentations", Testament: OldTestament, Chapters: 5, WordCount: 3411},
	{ID: "ezk", Name: "Ezekiel", Testament: OldTestament, Chapters: 48, WordCount: 39401},
	{ID: "dan", Name: "Daniel", Testament: OldTestament, Chapters: 12, WordCount: 11602},
	{ID: "hos", Name: "Hosea", Testament: OldTestament, Chapters: 14, WordCount: 5174},
	{ID: "jol", Name: "Joel", Testament: OldTestament, Chapters: 3, WordCount: 2033},
	{ID: "amo", Name: "Amos", Testament: OldTestament, Chapters: 9, WordCount: 4216},
	{ID: "oba", Name: "Obadiah", Testament: OldTestament, Chapters: 1, WordCount: 669},
	{ID: "jon", Name: "Jonah", Testament: OldTestament, Chapters: 4, WordCount: 1320},
	{ID: "mic", Name: "Micah", Testament: OldTestament, Chapters: 7, WordCount: 3152},
	{ID: "nam", Name: "Nahum", Testament: OldTestament, Chapters: 3, WordCount: 1284},
	{ID: "hab", Name: "Habakkuk", Testament: OldTestament, Chapters: 3, WordCount: 1475},
	{ID: "zep", Name: "Zephaniah", Testament: OldTestament, Chapters: 3, WordCount: 1616},
	{ID: "hag", Name: "Haggai", Testament: OldTestament, Chapters: 2, WordCount: 1130},
	{ID: "zec", Name: "Zechariah", Testament: OldTestament, Chapters: 14, WordCount: 6443},
	{ID: "mal", Name: "Malachi", Testament: OldTestament, Chapters: 4, WordCount: 1781},
	{ID: "mat", Name: "Matthew", Testament: NewTestament, Chapters: 28, WordCount: 23684},
	{ID: "mrk", Name: "Mark", Testament: NewTestament, Chapters: 16, WordCount: 15166},
	{ID: "luk", Name: "Luke", Testament: NewTestament, Chapters: 24, WordCount: 25939},
	{ID: "jhn", Name: "John", Testament: NewTestament, Chapters: 21, WordCount: 19094},
	{ID: "act", Name: "Acts", Testament: NewTestament, Chapters: 28, WordCount: 24245},
	{ID: "rom", Name: "Romans", Testament: NewTestament, Chapters: 16, WordCount: 9422},
	{ID: "1co", Name: "1 Corinthians", Testament: NewTestament, Chapters: 16, WordCount: 9462},
	{ID: "2co", Name: "2 Corinthians", Testament: NewTestament, Chapters: 13, WordCount: 6065},
	{ID: "gal", Name: "Galatians", Testament: NewTestament, Chapters: 6, WordCount: 3084},
	{ID: "eph", Name: "Ephesians", Testament: NewTestament, Chapters: 6, WordCount: 3022},
	{ID: "php", Name: "Philippians", Testament: NewTestament, Chapters: 4, WordCount: 2183},
	{ID: "col", Name: "Colossians", Testament: NewTestament, Chapters: 4, WordCount: 1979},
	{ID: "1th", Name: "1 Thessalonians", Testament: NewTestament, Chapters: 5, WordCount: 1837},
	{ID: "2th", Name: "2 Thessalonians", Testament: NewTestament, Chapters: 3, WordCount: 1022},
	{ID: "1ti", Name: "1 Timothy", Testament: NewTestament, Chapters: 6, WordCount: 2244},
	{ID: "2ti", Name: "2 Timothy", Testament: NewTestament, Chapters: 4, WordCount: 1666},
	{ID: "tit", Name: "Titus", Testament: NewTestament, Chapters: 3, WordCount: 896},
	{ID: "phm", Name: "Philemon", Testament: NewTestament, Chapters: 1, WordCount: 430},
	{ID: "heb", Name: "Hebrews", Testament: NewTestament, Chapters: 13, WordCount: 6897},
	{ID: "jas", Name: "James", Testament: NewTestament, Chapters: 5, WordCount: 2304},
	{ID: "1pe", Name: "1 Peter", Testament: NewTestament, Chapters: 5, WordCount: 2476},
	{ID: "2pe", Name: "2 Peter", Testament: NewTestament, Chapters: 3, WordCount: 1553},
	{ID: "1jn", Name: "1 John", Testament: NewTestament, Chapters: 5, WordCount: 2517},
	{ID: "2jn", Name: "2 John", Testament: NewTestament, Chapters: 1, WordCount: 298},
	{ID: "3jn", Name: "3 John", Testament: NewTestament, Chapters: 1, WordCount: 294},
	{ID: "jud", Name: "Jude", Testament: NewTestament, Chapters: 1, WordCount: 608},
	{ID: "rev", Name: "Revelation", Testament: NewTestament, Chapters: 22, WordCount: 11952},
}

// bibleWordCount is the precomputed sum of bibleBooks word counts.
const bibleWordCount = 789608

// Bible returns the built-in 66-book catalog.
func Bible() *Catalog {
	return New(bibleBooks, bibleWordCount)
}
