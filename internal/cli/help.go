package cli

// HelpText is shown for "thresh", "thresh help" and "thresh --help"
const HelpText = `thresh:
verb: to separate the wheat from the chaff.

thresh processes tabular text files in a quick and easy way, giving you
the pieces you care about and discarding the rest.

Usage:
------

  thresh [flags] [[alias=]file ...] [cat token ...] [postprocess]

Files:
  Whitespace-delimited text unless the name ends in .csv, .json or
  .parquet; a further .gz or .zst suffix is decompressed. "-" reads
  standard input ("-.csv", "-.json" pick the format). An alias makes the
  columns of a file available as <alias><column>.

cat tokens:
  alias          every column of the aliased file
  column         one column (must be unique across files)
  aliascolumn    one column of the aliased file
  name=expr      a new column computed from an expression; an expression
                 that evaluates to None removes the column

Postprocess (default: print .txt):
  list             list the headers with their index and length
  headerlist       list the headers, one per line
  print [suffix]   print the result in the format of the suffix
  output file      write the result to file
  burst file       write every column to its own file, file_<column>.ext
  assert expr ...  evaluate each expression; exit 1 if any is false

The following files will be used in examples:

$ cat file1.txt
a b
0 3
1 4
2 5

$ cat file2.txt
a c
6 9
7 10
8 11

Process the whole file and print to stdout (all are equivalent):
$ thresh file1.txt cat             # No args = print whole file
$ thresh file1.txt cat a b         # Can request specific columns
$ thresh A=file1.txt cat A         # Just an alias requests the whole file
$ thresh A=file1.txt cat Aa Ab     # Use aliases when columns are in multiple files
$ thresh A=file1.txt cat Aa  b     # Aliases are optional

Get one column from each file:
$ thresh   file1.txt Q=file2.txt cat  a Qc
$ thresh M=file1.txt Q=file2.txt cat Ma Qc

Create a new file (using '' so the parentheses are passed correctly):
$ thresh cat 't=linspace(0,1,5)' f=t**2

Produce a file with interpolated data:
$ thresh file1.txt cat 't=linspace(min(a),max(a),9)' 'b=interp(t,a,b)'

Check a condition in a script:
$ thresh A=file1.txt assert 'max(Ab) < 6'

Read from a pipe, as CSV (put -- before a leading "-.csv"):
$ generate | thresh -- -.csv cat a
`
